package spec

type serverSection struct {
	HTTPAddr    string `yaml:"http_addr"`
	GRPCPort    int    `yaml:"grpc_port"`
	MetricsPort int    `yaml:"metrics_port"`
}

type StdoutSinkSpec struct {
	MaxBytes int  `yaml:"max_bytes"` // 0 = print everything
	Header   bool `yaml:"header"`    // print a run header line
}

type FileSinkSpec struct {
	Dir string `yaml:"dir"`
}

type KafkaSinkSpec struct {
	Brokers      []string `yaml:"brokers"`
	Topic        string   `yaml:"topic"`
	Version      string   `yaml:"version"`
	ClientID     string   `yaml:"client_id"`
	RequiredAcks *int     `yaml:"required_acks"` // 0, 1 or -1; unset means 1
}

type BackendSinkSpec struct {
	// Config points at a backend connector file; empty reuses the source's.
	Config string `yaml:"config"`
}

type sinkConfigs struct {
	Stdout  StdoutSinkSpec  `yaml:"stdout"`
	File    FileSinkSpec    `yaml:"file"`
	Kafka   KafkaSinkSpec   `yaml:"kafka"`
	Backend BackendSinkSpec `yaml:"backend"`
}

type TransformSpec struct {
	Type         string `yaml:"type"`    // "inproc" (default) or "grpc"
	Address      string `yaml:"address"` // grpc only, e.g. "localhost:7070"
	Policy       string `yaml:"policy"`  // deterministic | conditional_random
	StatusColumn string `yaml:"status_column"`
	ShortRows    string `yaml:"short_rows"` // reject | pad
	Seed         uint64 `yaml:"seed"`       // 0 = clock seeded
	TimeoutMS    int    `yaml:"timeout_ms"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Server serverSection `yaml:"server"`

	Source struct {
		Kind   string `yaml:"kind"`   // backend | file
		Config string `yaml:"config"` // backend connector file
		Path   string `yaml:"path"`   // file source only
	} `yaml:"source"`

	Transform TransformSpec `yaml:"transform"`

	Sinks       []string    `yaml:"sinks"`
	SinkConfigs sinkConfigs `yaml:"sink_configs"`
}
