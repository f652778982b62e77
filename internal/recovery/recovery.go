// Package recovery extracts a single JSON object from free-form model text.
//
// Strategies run in a fixed order and the first one that yields a valid
// object wins:
//
//  1. the whole reply parsed as an object
//  2. the span from the first '{' to the last '}'
//  3. that span with bare word keys quoted (`key:` becomes `"key":`)
//
// The key-quoting repair is a heuristic. It also rewrites `word:` sequences
// inside string values, which can corrupt them.
package recovery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

type Stage string

const (
	StageWhole    Stage = "whole"
	StageEmbedded Stage = "embedded"
	StageRepaired Stage = "repaired"
)

// Strategy turns reply text into a candidate JSON object, reporting false
// when it cannot produce one.
type Strategy struct {
	Stage   Stage
	Extract func(reply string) (gjson.Result, bool)
}

// Chain is the ordered list of strategies Recover tries.
var Chain = []Strategy{
	{Stage: StageWhole, Extract: parseWhole},
	{Stage: StageEmbedded, Extract: parseEmbedded},
	{Stage: StageRepaired, Extract: parseRepaired},
}

// Error is returned when no strategy recovers an object.
type Error struct {
	Reply string
}

func (e *Error) Error() string {
	if _, ok := objectSpan(e.Reply); !ok {
		return "no valid JSON found in response"
	}
	return "unable to parse JSON even after fixes"
}

// Recover runs Chain over reply and returns the first object found together
// with the stage that produced it.
func Recover(reply string) (gjson.Result, Stage, error) {
	for _, s := range Chain {
		if obj, ok := s.Extract(reply); ok {
			return obj, s.Stage, nil
		}
	}
	return gjson.Result{}, "", &Error{Reply: reply}
}

var bareKeyPattern = regexp.MustCompile(`(\w+):`)

func parseWhole(reply string) (gjson.Result, bool) {
	return parseObject(reply)
}

func parseEmbedded(reply string) (gjson.Result, bool) {
	span, ok := objectSpan(reply)
	if !ok {
		return gjson.Result{}, false
	}
	return parseObject(span)
}

func parseRepaired(reply string) (gjson.Result, bool) {
	span, ok := objectSpan(reply)
	if !ok {
		return gjson.Result{}, false
	}
	return parseObject(QuoteBareKeys(span))
}

// QuoteBareKeys wraps every `word:` occurrence in double quotes.
func QuoteBareKeys(s string) string {
	return bareKeyPattern.ReplaceAllString(s, `"${1}":`)
}

// objectSpan returns the text from the first '{' through the last '}'.
func objectSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

func parseObject(s string) (gjson.Result, bool) {
	if !gjson.Valid(s) {
		return gjson.Result{}, false
	}
	res := gjson.Parse(s)
	if !res.IsObject() {
		return gjson.Result{}, false
	}
	return res, true
}

// Describe is a short form of a reply for logs.
func Describe(reply string) string {
	const limit = 200
	out := strings.TrimSpace(reply)
	out = strings.ReplaceAll(out, "\n", "\\n")
	if len(out) <= limit {
		return out
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return fmt.Sprintf("%s...(%d more bytes)", out[:cut], len(out)-cut)
}
