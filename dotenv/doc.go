// Package dotenv loads NAME=value assignments from dotenv files into an
// environment store.
//
// A dotenv file is read line by line. Blank lines and lines starting with
// '#' are skipped, and anything from " #" to the end of a line is a comment.
// Each remaining line of the form NAME=value is one assignment:
//
//	# database
//	DB_HOST=localhost
//	DB_PORT=5432            # Integer
//	DB_URL=postgres://${DB_HOST}:${DB_PORT}/app
//	MOTD="first line
//	second line"
//
// A value beginning with '"' may continue across lines until the next '"'.
// References of the form ${name} are replaced with the value of name, looked
// up first in the store and then in the ambient environment; a reference to
// an unknown name is an error. The resolved text is then coerced to an
// Integer, Float, Boolean or String [Value].
//
// The first assignment of a name wins. Later assignments, and assignments of
// names already present in the store before the load, are discarded.
//
// By default values are written to the process-wide [Process] store, which
// mirrors them into the OS environment. Use [WithStore] with [NewMap] to load
// into an isolated store instead.
package dotenv
