// Package genimage produces the pixel data for campaign assets.
//
// Every asset comes from one of three sources, tried in order:
//
//  1. reused - an image file the brief declares for the product
//  2. generated - the fal.ai image generation API
//  3. placeholder - a locally rendered gradient at the exact target size
//
// [Resolver] owns that ordering. [Client] is the fal.ai backend; it
// retries transient failures with a linear backoff and caches results
// keyed by model, prompt, and dimensions. The pipeline never fails an
// asset because the backend is down: the placeholder is the floor.
package genimage
