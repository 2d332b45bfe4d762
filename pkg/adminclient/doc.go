// Package adminclient is the Go client for the flowadmin REST API.
//
// A Client wraps the HTTP calls and unwraps the {"success", "data"} envelope.
// The stores (CollectionStore, SupabaseStore, UserStore) hold the state of
// one dashboard screen each and turn every action's outcome into a
// Notification ready to show the operator.
package adminclient
