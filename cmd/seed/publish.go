package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/seoulbrew/sitescope/internal/config"
	"github.com/seoulbrew/sitescope/internal/storage"
)

// runPublish uploads the snapshot JSON files to the configured bucket so
// servers with SNAPSHOT_FETCH_ON_START can pull them at boot.
func runPublish(c *cli.Context) error {
	cfg := config.Load()
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage client: %w", err)
	}

	if err := uploadFile(c, client, c.String("data"), true); err != nil {
		return err
	}
	return uploadFile(c, client, c.String("detail"), false)
}

func uploadFile(c *cli.Context, client *storage.MinioClient, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			log.Printf("%s not found, skipping", path)
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	key := filepath.Base(path)
	if err := client.UploadObject(c.Context, key, data); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	log.Printf("uploaded %s (%d bytes)", key, len(data))
	return nil
}
