package anyconf_test

import (
	"errors"
	"fmt"

	"github.com/0xalexb/anyconf"
	"github.com/0xalexb/anyconf/config"
	"github.com/0xalexb/anyconf/logging"
	"github.com/0xalexb/anyconf/merge"
	"github.com/0xalexb/anyconf/pointer"
	"github.com/0xalexb/anyconf/source"

	"go.uber.org/fx"
)

// ServerConfig represents application server configuration.
// It implements both Defaulter and Validator interfaces from the config package.
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Timeout int    `yaml:"timeout"`
}

// SetDefaults sets default values for the configuration.
func (c *ServerConfig) SetDefaults() bool {
	changed := false

	if c.Host == "" {
		c.Host = "localhost"
		changed = true
	}

	if c.Port == 0 {
		c.Port = 8080
		changed = true
	}

	if c.Timeout == 0 {
		c.Timeout = 30
		changed = true
	}

	return changed
}

// Validate validates the configuration.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.Timeout < 1 {
		return errors.New("timeout must be positive")
	}

	return nil
}

// ServerService is a service that depends on config.
type ServerService struct {
	Config *ServerConfig
}

// Address returns the server address from config.
func (s *ServerService) Address() string {
	return fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
}

// Example_appWithConfigIntegration demonstrates how to use App, Options, and Config together.
// The App supplies the Loader; config.Provider reads a section through it.
func Example_appWithConfigIntegration() {
	configModule := fx.Module("config",
		fx.Provide(config.Provider(new(ServerConfig), "server", []string{"testdata/config.yaml"})),
	)

	serviceModule := fx.Module("service",
		fx.Provide(func(cfg *ServerConfig) *ServerService {
			return &ServerService{
				Config: cfg,
			}
		}),
	)

	var service *ServerService

	invokeModule := fx.Module("invoke",
		fx.Invoke(func(s *ServerService) {
			service = s
		}),
	)

	app := anyconf.NewApp(
		anyconf.WithLogLevel("error"),
		anyconf.WithModules(configModule, serviceModule, invokeModule),
	)

	err := app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	fmt.Printf("Server address: %s\n", service.Address())
	fmt.Printf("Timeout: %d\n", service.Config.Timeout)
	// Output:
	// Server address: api.example.com:9000
	// Timeout: 30
}

func ExampleLoader_MultiLoad() {
	loader, err := anyconf.New(anyconf.WithLogger(logging.Discard()))
	if err != nil {
		fmt.Println(err)

		return
	}

	cnf, err := loader.MultiLoad(
		[]string{"testdata/a.json", "testdata/b.json"},
		anyconf.WithStrategy(merge.MergeDictsAndLists),
		anyconf.WithSources(source.Options("b.c=override")),
	)
	if err != nil {
		fmt.Println(err)

		return
	}

	list, _ := pointer.Get(cnf, "/b/b")
	text, _ := pointer.Get(cnf, "b.c")

	out, err := loader.Dumps(cnf, anyconf.WithType("json"))
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(list, text)
	fmt.Print(string(out))
	// Output:
	// [0 1 2 3 4 5] override
	// {
	//   "name": "a",
	//   "a": 2,
	//   "b": {
	//     "b": [
	//       0,
	//       1,
	//       2,
	//       3,
	//       4,
	//       5
	//     ],
	//     "c": "override",
	//     "d": "D"
	//   }
	// }
}
