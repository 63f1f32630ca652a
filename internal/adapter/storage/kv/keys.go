// Package kv implements the entity repositories on top of the flat
// key-value store. Every record is a JSON document under a prefixed key:
//
//	wallet_<walletId>
//	transaction_<walletId>_<suffix>
//	user_<userId>
//	auth_<normalizedUsername>
//
// The store offers no multi-key atomicity; repositories expose single-key
// operations and prefix scans only, and the services sequence them.
package kv

const (
	walletKeyPrefix      = "wallet_"
	transactionKeyPrefix = "transaction_"
	userKeyPrefix        = "user_"
	credentialKeyPrefix  = "auth_"
)

func walletKey(id string) string { return walletKeyPrefix + id }

func transactionKey(id string) string { return transactionKeyPrefix + id }

// walletTransactionPrefix is the shared key prefix of every transaction
// belonging to one wallet.
func walletTransactionPrefix(walletID string) string {
	return transactionKeyPrefix + walletID + "_"
}

func userKey(id string) string { return userKeyPrefix + id }

func credentialKey(normalizedUsername string) string {
	return credentialKeyPrefix + normalizedUsername
}
