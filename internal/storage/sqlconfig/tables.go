// Package sqlconfig implements the storage tables on Postgres using bob's query builder.
// Every table takes a bob.Executor so the same code runs on the pool and inside a bob.Tx.
package sqlconfig

const (
	accountsTable = "accounts"
	personsTable  = "persons"
	financeTable  = "finance"
	ratesTable    = "currency_rates"
)
