// Package services implements the driving port interfaces.
// Services contain the client's core logic: the tag-invalidated query
// cache, session lifecycle, and the orchestration between the remote API
// and the UI-facing ports.
//
// Services are pure Go with no UI or transport dependencies.
package services
