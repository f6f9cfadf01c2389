// Package evaluation contains the evaluation orchestrator: it resolves the
// target word an answer is judged against, invokes the external language
// judge, and parses its structured verdict. It abstracts the details of the
// LLM API integration behind the Judge interface so the decision logic stays
// free of any specific external service.
package evaluation
