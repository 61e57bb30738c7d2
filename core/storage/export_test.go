package storage

// DataSource exposes DSN construction to tests.
func (c Config) DataSource() string { return c.dataSource() }
