// Package pdfgrab retrieves downloadable PDF documents from web pages that
// may sit behind authenticated sessions and may render their content with
// JavaScript. It discovers document links with a tiered HTML heuristic,
// bridges a persisted cookie store into both an HTTP session and a
// controlled browser, and streams each discovered document to disk with
// retry and collision-safe naming.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, netscape/).
package pdfgrab
