package tellergo

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	Limits     struct {
		CreateAccount        int64 `yaml:"create_account"`
		Deposit              int64 `yaml:"deposit"`
		Withdraw             int64 `yaml:"withdraw"`
		Balance              int64 `yaml:"balance"`
		Transactions         int64 `yaml:"transactions"`
		Statement            int64 `yaml:"statement"`
		AcquireTimeoutMillis int64 `yaml:"acquire_timeout_ms"`
	} `yaml:"limits"`
	Breaker struct {
		MaxRequests     uint32 `yaml:"max_requests"`
		IntervalSeconds int64  `yaml:"interval_s"`
		TimeoutSeconds  int64  `yaml:"timeout_s"`
	} `yaml:"breaker"`
}
