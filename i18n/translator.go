package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// key is an issue code, optionally refined with a variant suffix such as
// "invalid_type.element". data provides values for {placeholders}.
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"field":                  `Field "{field}": {message}`,
		"at":                     `{message} (at {path})`,
		"parse_error":            `Not a valid JSON {kind}: {detail}`,
		"duplicate_key":          `Duplicate key in input: {detail}`,
		"truncated":              `Input rejected: {detail}`,
		"required":               `Expected field named "{field}"`,
		"required.element":       `Expected element at array position {index}, size was <{actual}>`,
		"invalid_type":           `Expected {expected}, was: <{actual}>`,
		"invalid_type.node":      `Expected JSON node to be {expected}, was <{actual}>`,
		"invalid_type.element":   `Expected {expected} at array position {index}, was <{actual}>`,
		"invalid_type.array":     `Unexpected type in array, expected {expected} elements, was: <{actual}>`,
		"value_mismatch":         `Expected value <{expected}>, was: <{actual}>`,
		"value_mismatch.node":    `Expected JSON node to be {kind} equal to <{expected}>, was <{actual}>`,
		"value_mismatch.element": `Expected <{expected}> at array position {index}, was <{actual}>: {array}`,
		"size_mismatch":          `Expected array size <{expected}>, was <{actual}>`,
		"size_mismatch.exactly":  `Expected exactly <{expected}> elements, was <{actual}>: {array}`,
		"size_mismatch.field":    `Expected array of size <{expected}>, size was <{actual}>`,
		"not_empty":              `Expected empty {kind}, was: <{actual}>`,
		"pattern":                `Expected value matching regex <{pattern}>, was: <{actual}>`,
		"invalid_format":         `Invalid datetime array: <{actual}>`,
		"invalid_format.size":    `Expected integer array of size 5, 6 or 7, size was: <{actual}>`,
		"invalid_format.string":  `Invalid {expected}: <{actual}>`,
		"invalid_format.pattern": `Invalid regex <{pattern}>: {detail}`,
		"invalid_format.element": `Invalid {expected} at array position {index}: <{actual}>`,
		"predicate":              `Value <{actual}> did not satisfy requirement: {detail}`,
		"predicate.element":      `Element <{actual}> at array position {index} did not satisfy requirement: {detail}`,
		"unasserted_fields":      `Found additional fields: <[{fields}]>`,
		"content_type":           `Expected JSON response, content type was <{actual}>`,
	},
	"ja": {
		"field":                  `フィールド "{field}": {message}`,
		"at":                     `{message} (位置 {path})`,
		"parse_error":            `有効な JSON {kind} ではありません: {detail}`,
		"duplicate_key":          `入力中でキーが重複しています: {detail}`,
		"truncated":              `入力が拒否されました: {detail}`,
		"required":               `フィールド "{field}" が必要です`,
		"required.element":       `配列の位置 {index} に要素が必要ですが、サイズは <{actual}> でした`,
		"invalid_type":           `{expected} が期待されましたが、実際は <{actual}> でした`,
		"invalid_type.node":      `JSON ノードは {expected} であるべきですが、実際は <{actual}> でした`,
		"invalid_type.element":   `配列の位置 {index} に {expected} が期待されましたが、実際は <{actual}> でした`,
		"invalid_type.array":     `配列に想定外の型があります ({expected} を期待): <{actual}>`,
		"value_mismatch":         `値 <{expected}> が期待されましたが、実際は <{actual}> でした`,
		"value_mismatch.node":    `JSON ノードは <{expected}> と等しい {kind} であるべきですが、実際は <{actual}> でした`,
		"value_mismatch.element": `配列の位置 {index} に <{expected}> が期待されましたが、実際は <{actual}> でした: {array}`,
		"size_mismatch":          `配列のサイズ <{expected}> が期待されましたが、実際は <{actual}> でした`,
		"size_mismatch.exactly":  `ちょうど <{expected}> 個の要素が期待されましたが、実際は <{actual}> 個でした: {array}`,
		"size_mismatch.field":    `サイズ <{expected}> の配列が期待されましたが、実際のサイズは <{actual}> でした`,
		"not_empty":              `空の {kind} が期待されましたが、実際は <{actual}> でした`,
		"pattern":                `正規表現 <{pattern}> に一致する値が期待されましたが、実際は <{actual}> でした`,
		"invalid_format":         `不正な日時配列です: <{actual}>`,
		"invalid_format.size":    `サイズ 5、6、7 の整数配列が期待されましたが、サイズは <{actual}> でした`,
		"invalid_format.string":  `不正な {expected} です: <{actual}>`,
		"invalid_format.pattern": `不正な正規表現 <{pattern}>: {detail}`,
		"invalid_format.element": `配列の位置 {index} の {expected} が不正です: <{actual}>`,
		"predicate":              `値 <{actual}> が条件を満たしません: {detail}`,
		"predicate.element":      `配列の位置 {index} の要素 <{actual}> が条件を満たしません: {detail}`,
		"unasserted_fields":      `未検証のフィールドがあります: <[{fields}]>`,
		"content_type":           `JSON レスポンスが期待されましたが、Content-Type は <{actual}> でした`,
	},
}

func (t dictTranslator) Message(key string, data map[string]string) string {
	if tpl, ok := templates[t.lang][key]; ok {
		return Render(tpl, data)
	}
	if tpl, ok := templates["en"][key]; ok {
		return Render(tpl, data)
	}
	return key
}

// Render substitutes {name} placeholders in tpl with values from data.
// Unknown placeholders are left as is.
func Render(tpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tpl, "{") {
		return tpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(key, data)
}
