// Package cli implements the interactive terminal client of the journal.
//
// App wires the services of internal/services over one storage backend and
// serves a read-eval-print loop:
//
//	setup           create the first passphrase
//	unlock, lock    open or close the journal
//	write           add an entry (mood, then text)
//	list [mood]     list entries without decrypting them
//	show <id>       decrypt and print one entry
//	delete <id>     remove one entry
//	passwd          change the passphrase, re-encrypting every entry
//	export <file>   write the encrypted entries as JSON
//	audit [n]       show the newest audit records
//	stats           show storage statistics
//	wipe            delete everything
//	exit, quit      leave
//
// Passphrases are read without echo when stdin is a terminal. An unlocked
// journal locks itself after the configured idle period.
package cli
