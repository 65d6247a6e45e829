package infrastructure

// MockTx stages writes until Commit so unit tests observe the same
// all-or-nothing outcome the SQL transaction provides.
type MockTx struct {
	Committed  bool
	RolledBack bool
	CommitErr  error
	staged     []func()
}

func (t *MockTx) Stage(apply func()) {
	t.staged = append(t.staged, apply)
}

func (t *MockTx) Commit() error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	for _, apply := range t.staged {
		apply()
	}
	t.staged = nil
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback() error {
	t.staged = nil
	t.RolledBack = true
	return nil
}
