package cookiestore

// Schema contains all SQL statements for creating tables and indexes
const Schema = `
-- Cookies set by the backend, keyed the way a browser keys them
CREATE TABLE IF NOT EXISTS cookies (
    origin TEXT NOT NULL,     -- scheme://host that set the cookie
    name TEXT NOT NULL,
    path TEXT NOT NULL,       -- Path attribute as sent (may be empty)

    set_url TEXT NOT NULL,    -- URL of the response that set it, used to replay defaults
    value TEXT NOT NULL,
    domain TEXT NOT NULL DEFAULT '',

    expires_at INTEGER,       -- Unix timestamp, NULL for session cookies
    secure BOOLEAN NOT NULL DEFAULT 0,
    http_only BOOLEAN NOT NULL DEFAULT 0,
    same_site INTEGER NOT NULL DEFAULT 0,

    updated_at INTEGER NOT NULL,

    PRIMARY KEY (origin, name, path)
);

CREATE INDEX IF NOT EXISTS idx_cookies_expires_at ON cookies(expires_at);
`
