/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package registry lists and resolves version tags in OCI registries.
//
// The client speaks the OCI distribution protocol through ORAS and
// authenticates with locally configured Docker credentials. Tags that
// parse as versions can be filtered with constraint expressions and
// ordered with the version comparator; a leading "v" on a tag is
// stripped before parsing.
package registry
