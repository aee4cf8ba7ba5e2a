// Package pkg provides the libraries behind memestyle, a store for the text
// styles of meme captions.
//
// # Overview
//
//  1. [textstyle] - The caption style record, its document format and
//     render attributes
//  2. [storage] - Key/value stores for style documents (file, memory,
//     redis, mongo)
//  3. [preview] - PNG rendering of a style
//  4. [fonts] - TrueType font registry used by previews
//  5. [errors], [observability], [httputil], [buildinfo] - Infrastructure
//
// # Quick Start
//
//	store, _ := storage.NewFileStore(dir)
//	style, err := textstyle.Load(ctx, store, textstyle.TopKey)
//	if err != nil {
//	    log.Warn("attribute reading failed, using defaults", "err", err)
//	}
//	style.Text = "one does not simply"
//	if err := style.Save(ctx, store, textstyle.TopKey); err != nil {
//	    log.Error("attribute writing failed", "err", err)
//	}
//	png, _ := preview.Render(style)
package pkg
