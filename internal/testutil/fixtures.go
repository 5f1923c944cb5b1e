package testutil

import (
	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/extension"
	"github.com/specialistvlad/resourcekit/internal/loader"
)

// BlogModule returns a small YAML bundle supporting the ORM and MongoDB
// drivers with a single "post" model. Extra options are appended to the
// model declaration.
func BlogModule(opts ...extension.Option) *SimpleModule {
	return &SimpleModule{
		Descriptor: bundle.Descriptor{
			Name:             "BlogBundle",
			Alias:            "app_blog",
			ServicesFormat:   loader.FormatYAML,
			SupportedDrivers: []string{driver.DoctrineORM, driver.DoctrineMongoDBODM},
		},
		Files: map[string]string{
			"config/services.yml": `
parameters:
  app.blog.per_page: 10
services:
  app.blog.paginator:
    class: App\Blog\Paginator
    arguments: ["@app.repository.post", "%app.blog.per_page%"]
`,
			"config/driver/doctrine/orm.yml": `
services:
  app.blog.orm_listener:
    class: App\Blog\Doctrine\ORM\Listener
`,
			"config/driver/doctrine/mongodb-odm.yml": `
services:
  app.blog.odm_listener:
    class: App\Blog\Doctrine\ODM\Listener
`,
		},
		Options: append([]extension.Option{
			extension.WithModels(map[string]config.ModelDefaults{
				"post": {Classes: map[string]string{config.KindModel: "App\\Blog\\Post"}},
			}),
		}, opts...),
	}
}
