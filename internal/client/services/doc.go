// Package services holds the client's use cases. Each service validates its
// input before any network or storage call and returns errors that
// common.KindOf can classify.
package services
