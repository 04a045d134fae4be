// Package translation translates single words between languages. MyMemory
// is the default backend; OpenAI and Gemini can be selected instead.
package translation
