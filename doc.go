// Package artily is the client SDK for the Artily marketplace API. It owns
// the session lifecycle — login, signup, logout, token rotation, restore —
// plus the persisted token store, the reactive session cell that any number
// of readers can watch, and the cross-process session sync protocol. The
// gql, listing, and market subpackages provide the transport, the paginated
// inquiry composer, and the typed marketplace operations.
//
// The session layer trusts the issuing server: tokens are decoded for their
// claims but never signature-verified client-side, and validation fails
// closed on any structural, decode, or expiry problem.
package artily
