package spending

import "github.com/dompet-app/dompet/internal/transaction"

// CreatedKeys returns the totals a newly created transaction affects.
func CreatedKeys(txs ...*transaction.Transaction) []Key {
	var keys []Key

	for _, tx := range txs {
		if k, ok := KeyFor(tx); ok {
			keys = appendUnique(keys, k)
		}
	}

	return keys
}

// UpdatedKeys returns the totals affected by applying patch to old: the key
// the old record contributed to and the key the patched record contributes to.
// Fields absent from the patch keep their old values.
func UpdatedKeys(old *transaction.Transaction, patch transaction.Patch) []Key {
	if old == nil {
		return nil
	}

	var keys []Key

	if k, ok := KeyFor(old); ok {
		keys = appendUnique(keys, k)
	}

	updated := patch.Apply(*old)
	if k, ok := KeyFor(&updated); ok {
		keys = appendUnique(keys, k)
	}

	return keys
}

// DeletedKeys returns the totals a deleted transaction contributed to.
func DeletedKeys(old *transaction.Transaction) []Key {
	return CreatedKeys(old)
}

func appendUnique(keys []Key, k Key) []Key {
	for _, existing := range keys {
		if existing == k {
			return keys
		}
	}

	return append(keys, k)
}
