// Package cluster surveys the container image versions running in a
// Kubernetes cluster.
//
// The survey lists pods (optionally restricted to namespaces), records
// every unique container image, and parses image tags as versions so
// callers can compare what is deployed against what registries offer.
package cluster
