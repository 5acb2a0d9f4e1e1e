// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides path and reference utilities shared by the
// parser and differ.
//
// # Path Template Signatures
//
// Two versions of an API may rename path parameters without changing the
// route. [Signature] normalizes a template so that literal segments must
// match exactly while "{param}" segments match any parameter by position:
//
//	pathutil.Signature("/pets/{petId}/tags")  // "/pets/{}/tags"
//	pathutil.Signature("/pets/{id}/tags")     // "/pets/{}/tags"
//
// [ParamNames] returns the placeholder names in order, which lets callers
// build an old-name to new-name rename map for matched templates.
//
// # PathBuilder Usage
//
// [PathBuilder] uses push/pop semantics to build dotted report paths
// incrementally without allocating intermediate strings. Use [Get] to obtain
// a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("paths")
//	path.Push("/pets")
//	// ... recurse ...
//	path.Pop()
//
// # Reference Helpers
//
// [ComponentName] extracts the component name from a local reference such as
// "#/components/schemas/Pet", unescaping JSON Pointer sequences.
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for security.
// It rejects symlinks.
package pathutil
