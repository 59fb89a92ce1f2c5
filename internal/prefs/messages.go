package prefs

// languageTokens maps whole-message commands (already lower-cased and
// trimmed) to a language. Matching is exact — "english please" is a query,
// not a command.
var languageTokens = map[string]Language{
	"english":  LanguageEnglish,
	"eng":      LanguageEnglish,
	"hindi":    LanguageHindi,
	"hin":      LanguageHindi,
	"gujarati": LanguageGujarati,
	"guj":      LanguageGujarati,
}

var confirmations = map[Language]string{
	LanguageEnglish:  `Language set to English. Send me stock names like "TCS" or "Reliance Infosys" and I will reply with an analysis.`,
	LanguageHindi:    `भाषा हिंदी पर सेट हो गई है। अब "TCS" या "Reliance Infosys" जैसे स्टॉक के नाम भेजें, मैं विश्लेषण भेजूंगा।`,
	LanguageGujarati: `ભાષા ગુજરાતી પર સેટ થઈ ગઈ છે. હવે "TCS" અથવા "Reliance Infosys" જેવા સ્ટોકનાં નામ મોકલો, હું વિશ્લેષણ મોકલીશ.`,
}

// OnboardingPrompt asks a new user to pick a language, in all three of them.
const OnboardingPrompt = `Welcome to StockMitra! Reply with one word to choose your language:

english / eng
hindi / hin
gujarati / guj

अपनी भाषा चुनने के लिए एक शब्द भेजें, जैसे "hindi"।
તમારી ભાષા પસંદ કરવા એક શબ્દ મોકલો, જેમ કે "gujarati".`
