/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])

CLI flags take precedence over environment variables.

# Settings

	-p              PORT            server port (default 5000)
	-d              DATABASE_URL    connection string (required)
	-t              DATABASE_TYPE   "postgres" (default) or "sqlite"
	-session-salt   SESSION_SALT    HMAC salt for session secrets (required)
	-admin-secret   ADMIN_SECRET    shared secret for the admin endpoints

ADMIN_SECRET is optional: when unset or shorter than 10 characters the admin
endpoints refuse every request.
*/
package cliparse
