// Package dto defines the wire shapes of the Yahoo Finance lookup API.
// Decoding is permissive: unknown fields are ignored and optional fields
// default to their zero values, so additive provider schema changes do not
// break the parser.
package dto

// LookupResponse is the envelope of one lookup page.
type LookupResponse struct {
	Finance Finance `json:"finance"`
}

// Finance carries the result list or a provider-level error.
type Finance struct {
	Result []Result  `json:"result"`
	Error  *APIError `json:"error"`
}

// Result is one page of documents with its pagination window.
type Result struct {
	Documents []Document `json:"documents"`
	Start     int        `json:"start"`
	Count     int        `json:"count"`
	Total     int        `json:"total"`
}

// Document is one instrument entry. Only the fields the catalog needs are
// declared; the provider sends many more.
type Document struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortName"`
	QuoteType string `json:"quoteType"`
	Category  string `json:"category"`
	Exchange  string `json:"exchange"`
}

// APIError is the provider's structured rejection of a request.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
