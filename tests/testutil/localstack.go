package testutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/systmms/smconfig/pkg/provider"
)

const localStackPort = 4566

// LocalStackEnv runs LocalStack through Docker Compose for integration tests.
type LocalStackEnv struct {
	t           *testing.T
	composePath string
	projectName string
	hostPort    int
	started     bool
	client      *secretsmanager.Client
}

// StartLocalStack starts the localstack service from
// tests/integration/docker-compose.yml and waits until it is healthy. The
// test is skipped when Docker is not available. Services are removed when the
// test finishes.
func StartLocalStack(t *testing.T) *LocalStackEnv {
	t.Helper()

	SkipIfDockerUnavailable(t)

	// Environment endpoints would override the dynamic LocalStack endpoint.
	for _, name := range []string{"AWS_ENDPOINT_URL", "AWS_ENDPOINT_URL_SECRETS_MANAGER"} {
		if _, ok := os.LookupEnv(name); ok {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}

	composePath := findDockerComposePath(t)
	if composePath == "" {
		t.Fatal("docker-compose.yml not found in tests/integration/")
	}

	env := &LocalStackEnv{
		t:           t,
		composePath: composePath,
		projectName: fmt.Sprintf("smconfig-test-%d", time.Now().UnixNano()),
	}

	env.compose("up", "-d", "localstack")
	env.started = true
	t.Cleanup(env.Stop)

	if err := env.waitForHealthy(90 * time.Second); err != nil {
		t.Fatalf("LocalStack failed to become healthy: %v", err)
	}
	if err := env.discoverPort(); err != nil {
		t.Fatalf("Failed to discover LocalStack port: %v", err)
	}
	return env
}

// SkipIfDockerUnavailable skips the test if Docker is not available
func SkipIfDockerUnavailable(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available, skipping integration test")
	}
	if err := exec.Command("docker", "compose", "version").Run(); err != nil {
		t.Skip("docker compose not available, skipping integration test")
	}
	if err := exec.Command("docker", "ps").Run(); err != nil {
		t.Skip("Docker daemon not running, skipping integration test")
	}
}

// Stop removes the LocalStack containers and volumes.
func (e *LocalStackEnv) Stop() {
	if !e.started {
		return
	}
	cmd := e.command("down", "-v")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		e.t.Logf("Warning: Failed to stop LocalStack: %v", err)
	}
	e.started = false
}

// Endpoint returns the LocalStack endpoint on the host.
func (e *LocalStackEnv) Endpoint() string {
	return fmt.Sprintf("http://127.0.0.1:%d", e.hostPort)
}

// Settings returns provider settings pointing at LocalStack with the dummy
// credentials it accepts.
func (e *LocalStackEnv) Settings(prefix string) map[string]any {
	settings := map[string]any{
		provider.OptionRegion:    "us-east-1",
		provider.OptionEndpoint:  e.Endpoint(),
		provider.OptionAccessKey: "test",
		provider.OptionSecretKey: "test",
	}
	if prefix != "" {
		settings[provider.OptionPrefix] = prefix
	}
	return settings
}

// CreateSecretString seeds a text secret.
func (e *LocalStackEnv) CreateSecretString(name, value string) {
	e.t.Helper()
	_, err := e.secretsManager().CreateSecret(context.Background(), &secretsmanager.CreateSecretInput{
		Name:         aws.String(name),
		SecretString: aws.String(value),
	})
	if err != nil {
		e.t.Fatalf("Failed to create secret %s: %v", name, err)
	}
}

// CreateSecretBinary seeds a binary secret.
func (e *LocalStackEnv) CreateSecretBinary(name string, value []byte) {
	e.t.Helper()
	_, err := e.secretsManager().CreateSecret(context.Background(), &secretsmanager.CreateSecretInput{
		Name:         aws.String(name),
		SecretBinary: value,
	})
	if err != nil {
		e.t.Fatalf("Failed to create secret %s: %v", name, err)
	}
}

func (e *LocalStackEnv) secretsManager() *secretsmanager.Client {
	e.t.Helper()
	if e.client != nil {
		return e.client
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	if err != nil {
		e.t.Fatalf("Failed to load AWS config: %v", err)
	}

	endpoint := e.Endpoint()
	e.client = secretsmanager.NewFromConfig(cfg, func(o *secretsmanager.Options) {
		o.BaseEndpoint = &endpoint
	})
	return e.client
}

func (e *LocalStackEnv) command(args ...string) *exec.Cmd {
	full := append([]string{"compose", "-f", e.composePath, "-p", e.projectName}, args...)
	cmd := exec.Command("docker", full...)
	cmd.Dir = filepath.Dir(e.composePath)
	return cmd
}

func (e *LocalStackEnv) compose(args ...string) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		e.t.Fatalf("docker compose %s failed: %v", strings.Join(args, " "), err)
	}
}

func (e *LocalStackEnv) waitForHealthy(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Docker Compose names containers {project}-{service}-{replica}
	container := fmt.Sprintf("%s-localstack-1", e.projectName)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for %s", container)
		case <-ticker.C:
			out, err := exec.Command("docker", "inspect", "--format", "{{.State.Health.Status}}", container).Output()
			if err == nil && strings.TrimSpace(string(out)) == "healthy" {
				return nil
			}
		}
	}
}

func (e *LocalStackEnv) discoverPort() error {
	out, err := e.command("port", "localstack", fmt.Sprint(localStackPort)).Output()
	if err != nil {
		return err
	}

	// "0.0.0.0:32768" -> 32768
	mapping := strings.TrimSpace(string(out))
	idx := strings.LastIndex(mapping, ":")
	if idx < 0 {
		return fmt.Errorf("unexpected port output format: %s", mapping)
	}
	if _, err := fmt.Sscanf(mapping[idx+1:], "%d", &e.hostPort); err != nil {
		return fmt.Errorf("failed to parse host port from %s: %w", mapping, err)
	}
	e.t.Logf("Discovered port mapping: localstack:%d -> localhost:%d", localStackPort, e.hostPort)
	return nil
}

// findDockerComposePath walks up to the module root and returns
// tests/integration/docker-compose.yml if it exists.
func findDockerComposePath(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			path := filepath.Join(dir, "tests", "integration", "docker-compose.yml")
			if _, err := os.Stat(path); err == nil {
				return path
			}
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
