package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"

	"pixelglyph/internal/gallery"
	"pixelglyph/internal/server"
)

const (
	defaultAddr       = ":2222"
	hostKeyPath       = "host_key"
	defaultGalleryDir = "assets/gallery"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	// Generate host key if it doesn't exist
	if err := ensureHostKey(hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	galleryDir := defaultGalleryDir
	if dir := os.Getenv("GALLERY_DIR"); dir != "" {
		galleryDir = dir
	}

	g, err := gallery.Load(galleryDir)
	if err != nil || g.Len() == 0 {
		if err == nil {
			log.Printf("No images in %s, using generated default", galleryDir)
		} else {
			log.Printf("Could not load gallery from %s: %v, using generated default", galleryDir, err)
		}
		g = gallery.Default()
	}
	for i := 0; i < g.Len(); i++ {
		e := g.At(i)
		b := e.Image.Bounds()
		log.Printf("Entry loaded: %s (%dx%d, threshold %d, luma %s)", e.Name, b.Dx(), b.Dy(), e.Threshold, e.Luma)
	}

	listenAddr := defaultAddr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, hostKeyPath, g)
	log.Printf("Starting pixelglyph gallery, connect with: ssh -t -p %s localhost [entry]", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
