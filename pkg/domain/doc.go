// Package domain holds the core types of the onboarding wizard: the slide
// graph, the per-session navigation state, the directory service record and
// the spreadsheet row model. It has no dependencies on adapters or IO.
package domain
