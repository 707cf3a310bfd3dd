package careers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// LoadCompaniesFile reads a JSON array of watched companies, the same document
// the notifier's users maintain by hand:
//
//	[{"name": "Acme", "careerPage": "https://acme.example/careers"}]
func LoadCompaniesFile(path string) ([]Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading companies file: %w", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing companies file %s: %w", path, err)
	}

	var companies []Company
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &companies,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding companies file %s: %w", path, err)
	}

	return companies, nil
}
