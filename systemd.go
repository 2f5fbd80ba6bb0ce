package trainlights

import (
	_ "embed"
	"os"
	"text/template"
)

//go:embed trainlights.service
var serviceEmbed string

type ServiceParams struct {
	BinaryPath string
	User       string
}

// SystemdServiceFile prints a unit file for the current binary to
// stdout, ready to drop into /etc/systemd/system.
func SystemdServiceFile() {
	tmpl, err := template.New("trainlights.service").Parse(serviceEmbed)
	if err != nil {
		panic(err)
	}

	path, err := os.Executable()
	if err != nil {
		panic(err)
	}

	params := ServiceParams{
		BinaryPath: path,
		User:       "pi",
	}

	if err := tmpl.Execute(os.Stdout, params); err != nil {
		panic(err)
	}
}
