// Package server exposes the converter over HTTP.
//
// Routes:
//
//	POST /api/convert   multipart upload, field "file"; responds with the
//	                    converted PDF as an attachment
//	GET  /api/health    {"status":"healthy"}
//
// Uploads must carry a .pdf file name and stay within the configured size
// limit. Input that is not a PDF is rejected with 400 before any parsing.
package server
