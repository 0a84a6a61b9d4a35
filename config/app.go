package config

type App struct {
	Port      string `env:"APP_PORT" default:"8080"`
	MongoURI  string `env:"MONGO_URI,required"`
	MongoDB   string `env:"MONGO_DB" default:"car_rental"`
	JWTSecret string `env:"JWT_SECRET" default:"local_dev_secret"`
	Env       string `env:"APP_ENV" default:"dev"`
}
