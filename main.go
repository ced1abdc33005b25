package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/jessevdk/go-flags"

	"stegtext/config"
	"stegtext/cryptography"
	"stegtext/protocol"
	"stegtext/util"
)

const (
	// key for configuration stored encrypted, "<base64 salt>:<password>"
	ConfigPasswordVariableName = "STEGTEXT_CONFIG_PASSWORD"

	decodeFailedExitCode = 1
	generalErrorExitCode = -1
)

type globalOptions struct {
	Config  string `long:"config" description:"Configuration file (default ~/.stegtext/config.yaml)"`
	Verbose bool   `short:"v" long:"verbose" description:"Print debug information"`
}

var (
	opts   globalOptions
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// decode failures are reported differently from the rest
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func newParser() *flags.Parser {
	opts = globalOptions{}
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "stegtext"
	parser.AddCommand("encode", "Embed payload into host text",
		"Hides the payload after the visible characters of the host text using zero-width characters. "+
			"--host-file wins over --host-text when both are given. Exits with status 255 on failure.",
		&encodeCommand{})
	parser.AddCommand("decode", "Extract payload from stego text",
		"Recovers the payload hidden by encode. Exits with status 1 when nothing can be decoded, "+
			"255 on any other failure.",
		&decodeCommand{})
	parser.AddCommand("capacity", "Show how a payload would be spread over the host", "", &capacityCommand{})
	parser.AddCommand("genconf", "Write the default configuration", "", &genconfCommand{})
	parser.AddCommand("gensalt", "Generate a salted password for encrypted logs", "", &gensaltCommand{})
	parser.AddCommand("readlog", "Print the log file", "", &readlogCommand{})
	return parser
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if _, err := newParser().ParseArgs(args); err != nil {
		return handleError(err)
	}
	return 0
}

func handleError(err error) int {
	var ferr *flags.Error
	if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
		fmt.Fprintln(stdout, ferr.Message)
		return 0
	}
	var derr *decodeError
	if errors.As(err, &derr) {
		fmt.Fprintln(stderr, "Decoding failed:", derr.err)
		return decodeFailedExitCode
	}
	fmt.Fprintln(stderr, err)
	return generalErrorExitCode
}

func configPath() (string, error) {
	if opts.Config != "" {
		return opts.Config, nil
	}
	return config.DefaultPath()
}

func configKey() ([]byte, error) {
	password := os.Getenv(ConfigPasswordVariableName)
	if password == "" {
		return nil, nil
	}
	return cryptography.KeyFromPassword(password)
}

func loadConfig() (*config.FullConfig, error) {
	util.DebugMode = opts.Verbose
	filename, err := configPath()
	if err != nil {
		return nil, err
	}
	key, err := configKey()
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(filename, key)
}

type encodeCommand struct {
	HostFile string `long:"host-file" description:"Host text file (UTF-8)"`
	HostText string `long:"host-text" description:"Host text on command line"`
	InFile   string `long:"infile" description:"Payload file to embed (binary)"`
	Text     string `long:"text" description:"Payload text to embed"`
	OutFile  string `long:"outfile" description:"Output file for stego text"`
	Bold     bool   `long:"bold" description:"Add visible bold markers"`
	Compress bool   `long:"compress" description:"Compress payload"`
}

func (c *encodeCommand) Execute(args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("Failed to load configuration: %s", err.Error())
	}
	logger := util.NewLogger(&conf.Logger)

	if err := c.encode(conf, logger); err != nil {
		logger.LogError(err)
		return fmt.Errorf("Encoding failed: %w", err)
	}
	return nil
}

func (c *encodeCommand) encode(conf *config.FullConfig, logger *util.Logger) error {
	var payload []byte
	var err error
	switch {
	case util.IsFile(c.InFile):
		if payload, err = os.ReadFile(c.InFile); err != nil {
			return err
		}
	case c.Text != "":
		payload = []byte(c.Text)
	default:
		return errors.New("No payload provided. Use --infile or --text.")
	}

	options := protocol.Options{
		Compress: c.Compress || conf.Encoder.Compress,
		Visible:  c.Bold || conf.Encoder.VisibleChannel,
	}

	var encoded, hostFile string
	var report protocol.Report
	switch {
	case c.HostFile != "":
		hostFile, encoded, report, err = protocol.HideInFile(c.HostFile, "", nil, payload, options)
	case c.HostText != "":
		encoded, report, err = protocol.EncodeWithReport(c.HostText, payload, options)
	case conf.StegConfig.Folder != "":
		hostFile, encoded, report, err = protocol.HideInFile("", conf.StegConfig.Folder,
			conf.StegConfig.Extensions, payload, options)
		if err == nil {
			logger.LogInfo("host text: " + hostFile)
		}
	default:
		return errors.New("No host text provided. Use --host-file or --host-text.")
	}
	if err != nil {
		return err
	}

	if report.HostNotText {
		logger.LogWarning("host file does not look like text: " + hostFile)
	}
	if !report.Normalized {
		logger.LogWarning("host text is not NFC normalized, normalizing transports may break the hidden data")
	}
	logger.LogInfof("payload %d bytes (%d serialized), %d bits over %d/%d carriers, %d bits per carrier",
		len(payload), report.PayloadSize, report.TotalBits, report.UsedCarriers, report.Carriers, report.BitsPerCarrier)

	if c.OutFile != "" {
		if err := util.WriteFile(c.OutFile, []byte(encoded), conf.Output.FileMode); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote stego text to %s\n", c.OutFile)
		return nil
	}
	fmt.Fprintln(stdout, encoded)
	return nil
}

type decodeCommand struct {
	InFile  string `long:"infile" description:"Stego text file (UTF-8)"`
	Text    string `long:"text" description:"Stego text on command line"`
	OutFile string `long:"outfile" description:"Output file for recovered payload"`
}

func (c *decodeCommand) Execute(args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("Failed to load configuration: %s", err.Error())
	}
	logger := util.NewLogger(&conf.Logger)

	var payload []byte
	switch {
	case util.IsFile(c.InFile):
		payload, err = protocol.RevealFromFile(c.InFile)
	case c.Text != "":
		payload, err = protocol.Decode(c.Text)
	default:
		return errors.New("No encoded text provided. Use --infile or --text.")
	}
	if err != nil {
		logger.LogError(err)
		return &decodeError{err}
	}
	logger.LogInfof("recovered %d bytes", len(payload))

	if c.OutFile != "" {
		if err := util.WriteFile(c.OutFile, payload, conf.Output.FileMode); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote payload to %s\n", c.OutFile)
		return nil
	}
	printPayload(stdout, payload)
	return nil
}

// text is printed as is, anything else as base64
func printPayload(w io.Writer, payload []byte) {
	if utf8.Valid(payload) {
		fmt.Fprintln(w, string(payload))
		return
	}
	fmt.Fprintln(w, "Binary payload (base64):")
	fmt.Fprintln(w, base64.StdEncoding.EncodeToString(payload))
}

type capacityCommand struct {
	HostFile string `long:"host-file" description:"Host text file (UTF-8)"`
	HostText string `long:"host-text" description:"Host text on command line"`
	Size     uint   `long:"size" description:"Payload size in bytes" required:"true"`
}

func (c *capacityCommand) Execute(args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	host := c.HostText
	if c.HostFile != "" {
		var err error
		if host, err = util.ReadText(c.HostFile); err != nil {
			return err
		}
	}
	report, err := protocol.Capacity(host, int(c.Size))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "carriers: %d\nused carriers: %d\ntotal bits: %d\nbits per carrier: %d\n",
		report.Carriers, report.UsedCarriers, report.TotalBits, report.BitsPerCarrier)
	return nil
}

type genconfCommand struct {
	Force bool `long:"force" description:"Overwrite existing configuration"`
}

func (c *genconfCommand) Execute(args []string) error {
	filename, err := configPath()
	if err != nil {
		return err
	}
	if util.IsFile(filename) && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", filename)
	}
	key, err := configKey()
	if err != nil {
		return err
	}
	if err := config.SaveConfig(filename, key, config.DefaultConfig(filepath.Dir(filename))); err != nil {
		return fmt.Errorf("Failed to save default configuration: %s", err.Error())
	}
	fmt.Fprintln(stdout, "Wrote configuration to", filename)
	return nil
}

type gensaltCommand struct{}

func (c *gensaltCommand) Execute(args []string) error {
	password, err := util.GetPasswd("Password: ")
	if err != nil {
		return fmt.Errorf("Failed to read password from stdin: %s", err.Error())
	}
	salted, err := util.GenSalt(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "[+] Salted password:", salted)
	return nil
}

type readlogCommand struct{}

func (c *readlogCommand) Execute(args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if conf.Logger.Filename == "" {
		return errors.New("logs are written to stderr, no log file configured")
	}
	password := ""
	if conf.Logger.IsEncrypted {
		password = conf.Logger.Password
		if password == "" {
			pw, err := util.GetPasswd("Password (<salt>:<password>): ")
			if err != nil {
				return err
			}
			password = string(pw)
		}
	}
	if err := util.ReadLog(stdout, conf.Logger.Filename, password); err != nil {
		return fmt.Errorf("Failed to read log file: %s", err.Error())
	}
	return nil
}
