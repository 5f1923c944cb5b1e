package resource

// Override replaces the method and/or arguments of a call. An empty Method
// keeps the default method; nil Arguments keep the default arguments while a
// non-nil empty slice calls the method without arguments.
type Override struct {
	Method    string
	Arguments []any
}

// Configuration holds the overrides for one resource operation.
type Configuration struct {
	Provider *Override
	Factory  *Override
}

// ProviderMethod returns the configured provider method or def.
func (c *Configuration) ProviderMethod(def string) string {
	return method(c.provider(), def)
}

// ProviderArguments returns the configured provider arguments or def.
func (c *Configuration) ProviderArguments(def []any) []any {
	return arguments(c.provider(), def)
}

// FactoryMethod returns the configured factory method or def.
func (c *Configuration) FactoryMethod(def string) string {
	return method(c.factory(), def)
}

// FactoryArguments returns the configured factory arguments or def.
func (c *Configuration) FactoryArguments(def []any) []any {
	return arguments(c.factory(), def)
}

func (c *Configuration) provider() *Override {
	if c == nil {
		return nil
	}
	return c.Provider
}

func (c *Configuration) factory() *Override {
	if c == nil {
		return nil
	}
	return c.Factory
}

func method(o *Override, def string) string {
	if o == nil || o.Method == "" {
		return def
	}
	return o.Method
}

func arguments(o *Override, def []any) []any {
	if o == nil || o.Arguments == nil {
		return def
	}
	return o.Arguments
}

// Overrides indexes configurations by resource name and operation.
type Overrides map[string]map[Operation]*Configuration

// Set stores cfg for resource and op.
func (o Overrides) Set(resource string, op Operation, cfg *Configuration) {
	if o[resource] == nil {
		o[resource] = make(map[Operation]*Configuration)
	}
	o[resource][op] = cfg
}

// For returns the configuration for resource and op, or nil.
func (o Overrides) For(resource string, op Operation) *Configuration {
	return o[resource][op]
}
