package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/together-server/internal/storage/account"
	"github.com/carson-networks/together-server/internal/storage/memory"
	"github.com/carson-networks/together-server/internal/storage/person"
	"github.com/carson-networks/together-server/internal/storage/rate"
	"github.com/carson-networks/together-server/internal/storage/sqlconfig"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

type Reader struct {
	Accounts     account.IAccountTable
	Persons      person.IPersonTable
	Transactions transaction.ITransactionTable
	Rates        rate.IRateTable
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     sqlconfig.NewAccountsTable(exec),
		Persons:      sqlconfig.NewPersonsTable(exec),
		Transactions: sqlconfig.NewTransactionsTable(exec),
		Rates:        sqlconfig.NewRatesTable(exec),
	}
}

func newMemoryReader(tables memory.Tables) *Reader {
	return &Reader{
		Accounts:     tables.Accounts,
		Persons:      tables.Persons,
		Transactions: tables.Transactions,
		Rates:        tables.Rates,
	}
}
