package postgres

import (
	clientdomain "github.com/mikopa/backend/internal/domain/client"
	loandomain "github.com/mikopa/backend/internal/domain/loan"
)

var (
	_ clientdomain.Repository     = (*ClientRepository)(nil)
	_ loandomain.Repository       = (*LoanRepository)(nil)
	_ loandomain.ClientRepository = (*ClientRepository)(nil)
)
