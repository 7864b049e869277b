package models

// GeneratedTicket is the AI's draft for a ticket.
type GeneratedTicket struct {
	Title       string
	Description string
}

// OutputLanguage is the language the AI writes the ticket in.
type OutputLanguage struct {
	Code        string
	DisplayName string
}

var outputLanguages = []OutputLanguage{
	{Code: "en", DisplayName: "English"},
	{Code: "ko", DisplayName: "한국어"},
	{Code: "ja", DisplayName: "日本語"},
	{Code: "zh-CN", DisplayName: "简体中文"},
	{Code: "es", DisplayName: "Español"},
	{Code: "fr", DisplayName: "Français"},
	{Code: "de", DisplayName: "Deutsch"},
}

// OutputLanguageFromCode resolves a language code, defaulting to English.
func OutputLanguageFromCode(code string) OutputLanguage {
	for _, lang := range outputLanguages {
		if lang.Code == code {
			return lang
		}
	}
	return outputLanguages[0]
}

// OutputLanguages lists the supported generation languages.
func OutputLanguages() []OutputLanguage {
	out := make([]OutputLanguage, len(outputLanguages))
	copy(out, outputLanguages)
	return out
}
