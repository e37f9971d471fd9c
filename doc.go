/*
go-coralcam runs real-time object detection on a live camera feed using a
quantized MobileNet SSD model on the Google Coral EdgeTPU accelerator.

The camera's native resolution rarely matches the fixed square input size
the model accepts, so frames are squashed (non-uniform resize) down to the
input tensor size and detection boxes are rectified back to native
coordinates with independent per-axis scale factors before rendering.

See the binary in cmd/coralcam for example usage of the pipeline.
*/
package coralcam
