// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package objectstore turns stored thumbnail references into URLs a browser
// can load.
//
// Thumbnails are stored either as absolute http(s) URLs, as root-relative
// public asset paths, as s3://bucket/key references, or as bare keys inside
// the configured bucket. Only the last two need presigning, and only objects
// of the configured bucket are ever signed.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var (
	// ErrForeignBucket rejects s3:// references outside the configured bucket.
	ErrForeignBucket = errors.New("objectstore: reference points outside the configured bucket")

	// ErrInvalidReference rejects references that are neither URLs, asset paths nor keys.
	ErrInvalidReference = errors.New("objectstore: invalid object reference")

	// ErrDisabled is returned for object references when no bucket is configured.
	ErrDisabled = errors.New("objectstore: object storage is not configured")
)

// Options configures a [Presigner].
type Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	TTL             time.Duration
}

// Presigner issues time-limited GET URLs for stored objects.
// A zero Presigner (no bucket configured) only passes URLs and asset paths through.
type Presigner struct {
	svc    *s3.S3
	bucket string
	ttl    time.Duration
}

// NewPresigner builds a Presigner. An empty bucket disables presigning.
func NewPresigner(opts Options) (*Presigner, error) {
	if opts.Bucket == "" {
		return &Presigner{}, nil
	}

	cfg := &aws.Config{Region: aws.String(opts.Region)}
	if opts.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.AccessKeyID, opts.SecretAccessKey, "")
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("objectstore: failed to create session: %w", err)
	}

	return &Presigner{svc: s3.New(sess), bucket: opts.Bucket, ttl: opts.TTL}, nil
}

// Enabled reports whether object references can be presigned.
func (p *Presigner) Enabled() bool {
	return p != nil && p.svc != nil
}

// Resolve returns a browser-loadable URL for ref.
//
// Absolute http(s) URLs and root-relative asset paths are returned unchanged.
// Object references are presigned when a bucket is configured. An empty
// string means there is nothing to show and the caller should use its
// placeholder.
func (p *Presigner) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}

	if isAbsoluteURL(ref) || isAssetPath(ref) {
		return ref, nil
	}

	if !p.Enabled() {
		return "", nil
	}

	key, err := p.key(ref)
	if err != nil {
		return "", err
	}

	request, _ := p.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	request.SetContext(ctx)

	signed, err := request.Presign(p.ttl)
	if err != nil {
		return "", fmt.Errorf("objectstore: failed to presign %s/%s: %w", p.bucket, key, err)
	}
	return signed, nil
}

// Check reports whether ref may be stored as a thumbnail reference.
// Object references additionally need a configured bucket.
func (p *Presigner) Check(ref string) error {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ErrInvalidReference
	case isAbsoluteURL(ref):
		parsed, err := url.Parse(ref)
		if err != nil || parsed.Host == "" {
			return ErrInvalidReference
		}
		return nil
	case isAssetPath(ref):
		return nil
	case !p.Enabled():
		return ErrDisabled
	}

	_, err := p.key(ref)
	return err
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// isAssetPath matches paths served by the web app itself, such as
// /default-thumbnail.svg. Protocol-relative //host paths are not assets.
func isAssetPath(ref string) bool {
	return strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//")
}

// key extracts the object key from s3://bucket/key or a bare key. Only the
// configured bucket is accepted.
func (p *Presigner) key(ref string) (string, error) {
	if !strings.HasPrefix(ref, "s3://") {
		if strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") {
			return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
		}
		return ref, nil
	}

	parsed, err := url.Parse(ref)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	if parsed.Host != p.bucket {
		return "", fmt.Errorf("%w: %q", ErrForeignBucket, parsed.Host)
	}

	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("%w: %q has no key", ErrInvalidReference, ref)
	}
	return key, nil
}
