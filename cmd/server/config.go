package main

type Config struct {
	Host           string `env:"HOST,default=0.0.0.0"`
	Port           int    `env:"PORT,default=8080"`
	NatsURL        string `env:"NATS_URL,default=nats://127.0.0.1:4222"`
	SQLiteFilepath string `env:"SQLITE_FILEPATH,default=chat-relay.db"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
	MaxFileSize    int64  `env:"MAX_FILE_SIZE,default=10485760"`
	SeedDirectory  bool   `env:"SEED_DIRECTORY,default=true"`
}
