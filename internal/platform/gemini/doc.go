// Package gemini implements the evaluation.Judge and speech.Synthesizer
// interfaces using Google's Gemini API.
package gemini
