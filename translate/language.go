package translate

// Language is a selectable language. Auto has no code and lets the service
// detect the source language.
type Language struct {
	Display string
	Code    string
}

// Auto is the detect-source pseudo language.
var Auto = Language{Display: "Auto"}

// English is the default target.
var English = Language{Display: "English", Code: "en"}

var languages = []Language{
	English,
	{Display: "中文", Code: "zh"},
	{Display: "Deutsch", Code: "de"},
	{Display: "Español", Code: "es"},
	{Display: "Français", Code: "fr"},
	{Display: "Italiano", Code: "it"},
	{Display: "日本語", Code: "ja"},
	{Display: "한국어", Code: "ko"},
	{Display: "Português", Code: "pt"},
	{Display: "Русский", Code: "ru"},
	{Display: "العربية", Code: "ar"},
	{Display: "ไทย", Code: "th"},
	{Display: "Türkçe", Code: "tr"},
	{Display: "Tiếng Việt", Code: "vi"},
}

// SourceLanguages lists source choices, Auto first.
func SourceLanguages() []Language {
	return append([]Language{Auto}, languages...)
}

// TargetLanguages lists target choices.
func TargetLanguages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage finds a language by its display name.
func LookupLanguage(display string) (Language, bool) {
	if display == Auto.Display {
		return Auto, true
	}
	for _, l := range languages {
		if l.Display == display {
			return l, true
		}
	}
	return Language{}, false
}

// DisplayNames returns the display names of ls in order.
func DisplayNames(ls []Language) []string {
	names := make([]string, len(ls))
	for i, l := range ls {
		names[i] = l.Display
	}
	return names
}
