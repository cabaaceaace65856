/*
Package retouch is an interactive mask editor for image inpainting. The user
paints a mask over the regions to remove (watermarks, objects, faces), and the
painted mask, binarized and resampled to the input size of an inpainting
model, is fed together with the image to an Inpainter. The result is composed
back into the original at its native resolution.

The editor keeps three native sized layers in z-order: the source image, the
translucent mask and the brush cursor overlay. It maps pointer input through a
pan and zoom transform and is decoupled from any windowing system through the
Platform interface. The Headless platform renders into memory and is driven by
dispatching pointer events, which makes the whole editor usable without a GUI:

	ed := retouch.New(retouch.DefaultOptions())
	hl := retouch.NewHeadless(800, 600)
	if err := ed.Initialize(img, hl); err != nil {
		return err
	}
	defer ed.Dispose()

	hl.PointerDown(400, 300, retouch.ButtonPrimary)
	hl.PointerMove(420, 310)
	hl.PointerUp(420, 310)

	p := &retouch.Pipeline{Inpainter: retouch.Diffuser{}}
	out, err := p.Process(ctx, ed)
*/
package retouch
