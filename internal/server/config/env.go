package config

import "github.com/dmitrijs2005/aitutor/internal/flagx"

// parseEnv overlays TUTOR_* environment variables. Unset variables leave
// the current value alone.
func parseEnv(c *Config) {
	c.HTTPAddr = flagx.EnvString("TUTOR_HTTP_ADDR", c.HTTPAddr)
	c.GRPCAddr = flagx.EnvString("TUTOR_GRPC_ADDR", c.GRPCAddr)
	c.DatabaseDSN = flagx.EnvString("TUTOR_DATABASE_DSN", c.DatabaseDSN)
	c.SecretKey = flagx.EnvString("TUTOR_SECRET_KEY", c.SecretKey)
	c.SessionTokenValidityDuration = flagx.EnvDuration("TUTOR_SESSION_TTL", c.SessionTokenValidityDuration)
	c.AIServiceURL = flagx.EnvString("TUTOR_AI_URL", c.AIServiceURL)
	c.AIRequestTimeout = flagx.EnvDuration("TUTOR_AI_TIMEOUT", c.AIRequestTimeout)
	c.S3RootUser = flagx.EnvString("TUTOR_S3_USER", c.S3RootUser)
	c.S3RootPassword = flagx.EnvString("TUTOR_S3_PASSWORD", c.S3RootPassword)
	c.S3Bucket = flagx.EnvString("TUTOR_S3_BUCKET", c.S3Bucket)
	c.S3Region = flagx.EnvString("TUTOR_S3_REGION", c.S3Region)
	c.S3BaseEndpoint = flagx.EnvString("TUTOR_S3_ENDPOINT", c.S3BaseEndpoint)
	c.LogFormat = flagx.EnvString("TUTOR_LOG_FORMAT", c.LogFormat)
	c.CORSOrigins = flagx.EnvList("TUTOR_CORS_ORIGINS", c.CORSOrigins)
}
