package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "min" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "必須です"
		case "too_short":
			return withSuffix("短すぎます", data, "min")
		case "too_long":
			return withSuffix("長すぎます", data, "max")
		case "pattern":
			return "形式が不正です"
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_format":
			return "形式が不正です"
		case "validation_failed":
			return "検証に失敗しました"
		case "bad_key":
			return "スキーマキーが不正です"
		case "depth_exceeded":
			return "スキーマのネストが深すぎます"
		case "unknown_field":
			return "未知のフィールドです"
		}
	default: // "en"
		switch code {
		case "required":
			return "required"
		case "too_short":
			return withSuffix("too short", data, "min")
		case "too_long":
			return withSuffix("too long", data, "max")
		case "pattern":
			return "does not match the expected pattern"
		case "invalid_enum":
			return "not an allowed value"
		case "invalid_format":
			return "invalid format"
		case "validation_failed":
			return "validation failed"
		case "bad_key":
			return "invalid schema key"
		case "depth_exceeded":
			return "schema nesting too deep"
		case "unknown_field":
			return "unknown field"
		}
	}
	return code
}

func withSuffix(msg string, data map[string]string, key string) string {
	if data == nil || data[key] == "" {
		return msg
	}
	return msg + " (" + key + " " + data[key] + ")"
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
