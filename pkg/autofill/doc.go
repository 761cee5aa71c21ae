// Package autofill turns a snapshot of a page's form fields and a decrypted
// vault item into a fill script: an ordered list of click, focus and fill
// operations keyed by element opid.
//
// Matching is heuristic. Login items pair password fields with the text
// fields before them; card and identity items assign page fields to item
// attributes by comparing ids, names, labels and placeholders against name
// tables. Custom fields on the item are matched first, by exact name, a
// "regex=" pattern, or a "csv=" list.
//
// GenerateFillScript is a pure function of its inputs. Service adds
// multi-frame orchestration, URL blocking, logging and TOTP codes.
package autofill
