package config

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"
)

// ChargeCode places one charge code on a report sheet.
type ChargeCode struct {
	Report string `mapstructure:"report"`
	Sheet  string `mapstructure:"sheet"`
	Row    int    `mapstructure:"row"`
}

// Employee says which reports an employee appears on and where each of
// their charge codes lands.
type Employee struct {
	Reports     []string              `mapstructure:"reports"`
	ChargeCodes map[string]ChargeCode `mapstructure:"charge_codes"`
}

// OnReport reports whether the employee has a row on the given report.
func (e Employee) OnReport(id string) bool {
	for _, r := range e.Reports {
		if r == id {
			return true
		}
	}
	return false
}

// CodeNames lists the employee's charge codes in sorted order.
func (e Employee) CodeNames() []string {
	codes := make([]string, 0, len(e.ChargeCodes))
	for code := range e.ChargeCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// EmployeeMappings is the full employee to report cell mapping.
type EmployeeMappings struct {
	Employees map[string]Employee `mapstructure:"employees"`
}

// Names lists employee names in sorted order.
func (m EmployeeMappings) Names() []string {
	names := make([]string, 0, len(m.Employees))
	for name := range m.Employees {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadMappings reads the employee mappings file.
func LoadMappings(path string) (EmployeeMappings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return EmployeeMappings{}, fmt.Errorf("failed to read mappings file: %w", err)
	}

	var m EmployeeMappings
	if err := v.Unmarshal(&m); err != nil {
		return EmployeeMappings{}, fmt.Errorf("failed to parse mappings file: %w", err)
	}
	if len(m.Employees) == 0 {
		return EmployeeMappings{}, fmt.Errorf("mappings file %s defines no employees", path)
	}
	return m, nil
}
