package testutils

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// KafkaBrokers returns TEST_KAFKA_BROKERS or skips the test.
func KafkaBrokers(t *testing.T) []string {
	t.Helper()
	v := os.Getenv("TEST_KAFKA_BROKERS")
	if v == "" {
		t.Skip("TEST_KAFKA_BROKERS not set")
	}
	return strings.Split(v, ",")
}

// CreateKafkaTopic creates topic inside the "kafka" docker container.
func CreateKafkaTopic(t *testing.T, topic string) {
	t.Helper()

	cmd := exec.Command(
		"docker", "exec", "kafka",
		"kafka-topics", "--create",
		"--if-not-exists",
		"--topic", topic,
		"--bootstrap-server", "localhost:9092",
		"--replication-factor", "1",
		"--partitions", "1",
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		t.Skipf("cannot create topic %s: %v\n%s", topic, err, out.String())
	}
}
