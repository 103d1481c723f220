// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Sign-in Constraints

const (
	// MinPasswordLength applies to accounts created through the CLI.
	MinPasswordLength = 8

	// MaxLoginAttempts is how many failed sign-ins one email gets per window.
	MaxLoginAttempts = 5

	// LoginAttemptWindow is how long failed attempts are remembered.
	LoginAttemptWindow = 15 * time.Minute

	// loginAttemptPrefix namespaces the failure counters in Redis.
	loginAttemptPrefix = "auth:login_attempt:"
)

// Messages returned to clients. Sign-in failures share one message so the
// response never reveals whether an email is registered.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidRefresh     = "Invalid or expired refresh token"
)
