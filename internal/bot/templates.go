package bot

import "fmt"

// cannedResponses are the fixed advice bodies served when no completion
// service is involved. The user's message never changes which body is picked.
var cannedResponses = map[Mode]string{
	ModeMisinformation: `🔍 **Misinformation Risk Analysis**

Thank you for checking! Here's my assessment of your message:

**Risk Level: 🟡 MEDIUM**

**Analysis:**
- The message contains urgency indicators
- No verifiable source provided
- Common forward-type patterns detected

**Recommendations:**
1. Verify the information from official sources
2. Don't forward without confirmation
3. Check fact-checking websites

**Remember:** When in doubt, don't spread it out!`,

	ModeCybercrime: `🚓 **Cyber Crime Help & Reporting**

**Immediate Help:**
- 📞 **1930** - Cyber Crime Helpline (Toll Free)
- 🌐 **cybercrime.gov.in** - File complaint online
- 🚨 **112** - Police Emergency

**Steps to Report:**
1. Take screenshots as evidence
2. Note down all transaction IDs
3. Call 1930 immediately
4. File complaint on cybercrime.gov.in
5. Visit nearest police station

**What NOT to do:**
- Don't panic
- Don't delete messages
- Don't share OTPs with anyone`,

	ModeAbuse: `🛡️ **Online Abuse & Harassment Awareness**

**What counts as online abuse:**
- Cyberbullying & harassment
- Threatening messages
- Identity harassment
- Privacy violations
- Stalking & trolling

**Your Rights:**
- You have the right to feel safe online
- Online abuse is a criminal offense
- You can report anonymously

**Immediate Actions:**
1. Block the person
2. Report to platform
3. Save evidence
4. Contact 1091 (Women Helpline)
5. File police complaint

**Helpful Resources:**
- 📞 1091 - Women Helpline
- 📞 181 - Child Helpline
- 🏛️ Legal aid services`,

	ModeFraud: `🏦 **Bank Fraud & Scam Awareness**

**🚨 Common Scams:**

1. **OTP Fraud** - Never share OTP with anyone
2. **Fake KYC** - Banks never ask for KYC via links
3. **UPI Scams** - Don't accept requests from strangers
4. **Job Fraud** - Never pay for guaranteed jobs
5. **Phishing** - Check sender's email carefully

**Red Flags:**
- ❌ Urgency to act immediately
- ❌ Requests for OTP/Password
- ❌ Suspicious links
- ❌ Too good to be true offers
- ❌ Unknown sender

**If Scammed:**
1. Call 1930 immediately
2. Block the card/account
3. File complaint on cybercrime.gov.in
4. Lodge FIR at police station

**Prevention Tips:**
✅ Verify before clicking links
✅ Never share OTP
✅ Enable 2FA on all accounts
✅ Check URL carefully`,
}

const defaultCanned = `🤖 **Community Safety Bot**

Hello! I'm here to help you stay safe online.

I can assist with:
- 🔍 Checking messages for misinformation
- 🚓 Cybercrime reporting guidance
- 🛡️ Online abuse awareness
- 🏦 Bank fraud prevention

**How can I help you today?**

Type your question or paste a suspicious message you'd like me to analyze.`

// CannedResponse returns the fixed body for a mode, or the default greeting
// for general/unknown modes.
func CannedResponse(mode Mode) string {
	if body, ok := cannedResponses[mode]; ok {
		return body
	}
	return defaultCanned
}

// modePrompts are the per-mode instructions sent to the completion service.
// The user's message is appended verbatim at the end.
var modePrompts = map[Mode]string{
	ModeMisinformation: `You are a Misinformation Risk Checker assistant for the Community Safety Bot.
Your role is to analyze messages and identify potential misinformation risks.
Analyze the following message for:
- Urgency indicators
- Emotional manipulation
- Lack of credible sources
- Forward-type patterns
- Suspicious claims

Provide a risk assessment (Low/Medium/High) with a brief explanation.
Do NOT claim to verify truth, only assess risk level.
Keep your response helpful and educational.
User's message: %s`,

	ModeCybercrime: `You are a Cyber Crime Help & Reporting assistant for the Community Safety Bot.
Your role is to provide guidance on cybercrime reporting and prevention.
Include information about:
- Official reporting channels (cybercrime.gov.in, 1930 helpline)
- Step-by-step guidance for different scenarios
- Immediate actions to take
- What NOT to do in panic situations
- Legal resources and support

User's question: %s`,

	ModeAbuse: `You are an Online Abuse & Harassment Awareness assistant for the Community Safety Bot.
Your role is to educate users about online abuse, harassment, and their rights.
Explain in simple language:
- What counts as online abuse
- Types of online harassment
- User rights and legal protections
- When and how to report
- Safety guidelines and prevention
- Resources for help

User's question: %s`,

	ModeFraud: `You are a Bank Fraud & Scam Awareness assistant for the Community Safety Bot.
Your role is to educate users about banking fraud and online scams.
Cover:
- Common scams: OTP fraud, fake KYC, UPI scams, job fraud
- Red flags to watch for
- Immediate actions if scammed
- Prevention tips
- How to verify legitimate communications

User's question: %s`,

	ModeGeneral: `You are the Community Safety Bot, an AI assistant helping communities stay safe online.
You can help with:
- Misinformation detection
- Cybercrime reporting guidance
- Online safety awareness
- Banking fraud prevention

Provide helpful, accurate, and empowering responses.
User's message: %s`,
}

// Prompt renders the completion prompt for a mode with the user's message
// interpolated at the end. Unknown modes use the general prompt.
func Prompt(mode Mode, message string) string {
	tmpl, ok := modePrompts[mode]
	if !ok {
		tmpl = modePrompts[ModeGeneral]
	}
	return fmt.Sprintf(tmpl, message)
}
