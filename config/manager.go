package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	configFilePaths = []string{
		"/etc/lumeweb/provision/config.yaml",
		"/etc/lumeweb/provision/config.yml",
		"$HOME/.lumeweb/provision/config.yaml",
		"$HOME/.lumeweb/provision/config.yml",
		"./provision.yaml",
		"./provision.yml",
	}
	errConfigFileNotFound = errors.New("config file not found")
)

var _ Manager = (*ManagerDefault)(nil)

type ManagerDefault struct {
	config  *koanf.Koanf
	root    *Config
	changes bool
	persist bool
}

func NewManager() (*ManagerDefault, error) {
	k, err := newConfig()
	if err != nil && !errors.Is(err, errConfigFileNotFound) {
		return nil, err
	}

	exists := err == nil

	return &ManagerDefault{
		config:  k,
		changes: !exists,
		persist: true,
	}, nil
}

// NewManagerFromMap builds a manager over an in-memory tree. Defaults are applied
// on Init but never written to disk.
func NewManagerFromMap(values map[string]any) (*ManagerDefault, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, err
	}

	return &ManagerDefault{
		config: k,
	}, nil
}

func (m *ManagerDefault) hooks() []mapstructure.DecodeHookFunc {
	return []mapstructure.DecodeHookFunc{
		cacheConfigHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	}
}

func (m *ManagerDefault) Init() error {
	root := &Config{}

	err := m.setDefaultsForObject(root.Core, "core")
	if err != nil {
		return err
	}
	err = m.maybeSave()
	if err != nil {
		return err
	}

	err = m.config.UnmarshalWithConf("", root, koanf.UnmarshalConf{
		Tag: "mapstructure",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(m.hooks()...),
			Metadata:         nil,
			Result:           root,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return err
	}

	err = m.validateObject(root)
	if err != nil {
		return err
	}

	m.root = root

	return nil
}

func (m *ManagerDefault) setDefaultsForObject(obj interface{}, prefix string) error {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	if setter, ok := obj.(Defaults); ok {
		err := m.applyDefaults(setter, prefix)
		if err != nil {
			return err
		}
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)
		fieldType := objType.Field(i)

		if !field.CanInterface() {
			continue
		}

		mapstructureTag := fieldType.Tag.Get("mapstructure")

		newPrefix := prefix
		if mapstructureTag != "" && mapstructureTag != "-" {
			if newPrefix != "" {
				newPrefix += "."
			}
			newPrefix += mapstructureTag
		}

		if field.Kind() == reflect.Struct {
			err := m.setDefaultsForObject(field.Interface(), newPrefix)
			if err != nil {
				return err
			}
		}

		// Optional sections stay nil unless the file names them.
		if field.Kind() == reflect.Ptr && fieldType.Type.Elem().Kind() == reflect.Struct && m.config.Exists(newPrefix) {
			err := m.setDefaultsForObject(reflect.New(fieldType.Type.Elem()).Interface(), newPrefix)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *ManagerDefault) validateObject(obj interface{}) error {
	objValue := reflect.ValueOf(obj)

	if objValue.Kind() == reflect.Ptr {
		if objValue.IsNil() {
			return nil
		}
		objValue = objValue.Elem()
	}

	if validator, ok := obj.(Validator); ok {
		err := validator.Validate()
		if err != nil {
			return err
		}
	}

	if objValue.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)

		if !field.CanInterface() {
			continue
		}

		if field.Kind() == reflect.Struct || (field.Kind() == reflect.Ptr && !field.IsNil() && field.Elem().Kind() == reflect.Struct) {
			err := m.validateObject(field.Interface())
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *ManagerDefault) applyDefaults(setter Defaults, prefix string) error {
	defaults := setter.Defaults()
	for key, value := range defaults {
		fullKey := key
		if prefix != "" {
			fullKey = fmt.Sprintf("%s.%s", prefix, key)
		}
		ret, err := m.setDefault(fullKey, value)
		if err != nil {
			return err
		}

		if ret {
			m.changes = true
		}
	}

	return nil
}

func (m *ManagerDefault) setDefault(key string, value interface{}) (bool, error) {
	if !m.config.Exists(key) {
		err := m.config.Set(key, value)
		if err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

func (m *ManagerDefault) maybeSave() error {
	if !m.persist || !m.changes {
		return nil
	}

	data, err := m.config.Marshal(yaml.Parser())
	if err != nil {
		return err
	}

	configFile := findConfigFile(true, true)

	err = os.MkdirAll(path.Dir(configFile), 0755)
	if err != nil {
		return err
	}
	err = os.WriteFile(configFile, data, 0644)
	if err != nil {
		return err
	}

	m.changes = false

	return nil
}

func (m *ManagerDefault) Config() *Config {
	return m.root
}

func (m *ManagerDefault) String(key string) string {
	return m.config.String(key)
}

func (m *ManagerDefault) Save() error {
	m.changes = true
	return m.maybeSave()
}

func (m *ManagerDefault) ConfigFile() string {
	if !m.persist {
		return ""
	}

	return findConfigFile(false, false)
}

func (m *ManagerDefault) ConfigDir() string {
	configFile := m.ConfigFile()
	if configFile == "" {
		return "."
	}

	return path.Dir(configFile)
}

func newConfig() (*koanf.Koanf, error) {
	k := koanf.New(".")

	configFile := findConfigFile(false, false)

	if configFile == "" {
		return k, errConfigFileNotFound
	}

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, err
	}

	return k, nil
}

func findConfigFile(dirCheck bool, ignoreExist bool) string {
	for _, _path := range configFilePaths {
		expandedPath := os.ExpandEnv(_path)
		_, err := os.Stat(expandedPath)
		if err == nil {
			return expandedPath
		}

		if os.IsNotExist(err) && dirCheck {
			_, err := os.Stat(path.Dir(expandedPath))
			if err == nil || ignoreExist {
				return expandedPath
			}
		}
	}

	return ""
}
