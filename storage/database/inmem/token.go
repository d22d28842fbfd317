package inmemdb

import "time"

// RevokeToken blacklists a session token ID until it expires.
func (db *DB) RevokeToken(jti string, expiresAt time.Time) {
	db.tokens.mutex.Lock()
	defer db.tokens.mutex.Unlock()

	now := time.Now()
	for id, exp := range db.tokens.revoked {
		if exp.Before(now) {
			delete(db.tokens.revoked, id)
		}
	}
	db.tokens.revoked[jti] = expiresAt
}

func (db *DB) IsRevoked(jti string) bool {
	db.tokens.mutex.Lock()
	defer db.tokens.mutex.Unlock()

	_, ok := db.tokens.revoked[jti]
	return ok
}
