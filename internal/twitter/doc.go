// Package twitter integrates with the Twitter Direct Message API.
//
// types.go mirrors the Account Activity webhook and create-event wire
// formats exactly. Client sends DM events through an OAuth1-signed HTTP
// client; transient-failure handling lives here, not in the webhook adapter.
package twitter
