// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token and ID generation utilities.

# Sign Tokens

Sign tokens use HMAC-SHA256 to create deterministic, verifiable tokens for
emailed sign-request links:

	token := auth.GenerateSignToken(requestID, salt)
	err := auth.ValidateSignToken(requestID, token, salt)

The token is URL-safe base64 encoded without padding. Since it's deterministic,
the same request ID and salt always produce the same token. This allows
validation without storing the token in the database.

# Link Slugs

Link slugs create short URL-friendly identifiers for sign-request links:

	slug := auth.GenerateLinkSlug(requestID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing. Like sign
tokens, they're deterministic from the request ID and salt; the slug is stored
on the sign request so the link can be resolved back to it.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
