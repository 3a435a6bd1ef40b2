// Package config loads typed configuration structs from the process
// environment using github.com/caarlos0/env/v11 tags, after reading an
// optional .env file with github.com/joho/godotenv.
//
// Each struct type is parsed once and cached for the life of the process:
//
//	var cfg contact.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
