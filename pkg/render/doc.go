// Package render turns catalog entries into a typed view tree and writes
// that tree as a single HTML page.
//
// Render maps one catalog.Entry to a View:
//
//   - *StandardView: title, description, info panel, optional WebSocket,
//     implementation and troubleshooting sections, the endpoint count and
//     one Card per endpoint in data file order
//   - *SharingView: one SectionView per section, with a Card for each
//     subsection that documents a method
//
// Missing optional blocks are left out. Missing display fields are
// replaced with the Placeholder constants.
//
// Build renders a whole catalog into a Document holding the navigation,
// the overview tab data and the views. An entry that fails to render is
// logged and skipped. WriteHTML executes the embedded templates, one
// buffer per view, so a failing section is skipped the same way.
//
//	doc := render.NewDocument(cat)
//	err := render.WriteHTML(w, doc, render.PageOptions{Theme: theme.Dark})
//
// Card.Visible is owned by package search. A Document shared between
// requests must be cloned before filtering.
package render
