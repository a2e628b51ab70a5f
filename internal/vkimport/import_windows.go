//go:build windows

package vkimport

import (
	"fmt"
	"time"
	"unsafe"
)

var appName = []byte("vrscreencap\x00")

// readbackTimeout bounds the fence wait after a readback submit. The
// copy runs once per tick; a fence that outlives this is a lost device,
// not a slow one.
const readbackTimeout = 5 * time.Second

// Device owns a dedicated Vulkan instance and logical device used only
// for external memory import and readback. It is independent of the
// renderer's GPU context; frames cross between the two through host
// memory.
type Device struct {
	instance uintptr // VkInstance
	physical uintptr // VkPhysicalDevice
	device   uintptr // VkDevice
	queue    uintptr // VkQueue
	family   uint32
	cmdPool  uint64 // VkCommandPool
	cmdBuf   uintptr
	fence    uint64
	memProps physicalDeviceMemoryProperties
}

// NewDevice creates an import device on the first physical device that
// offers a graphics or transfer queue.
func NewDevice() (*Device, error) {
	app := applicationInfo{
		sType:            sTypeApplicationInfo,
		pApplicationName: unsafe.Pointer(&appName[0]),
		apiVersion:       apiVersion11,
	}
	instInfo := instanceCreateInfo{
		sType:            sTypeInstanceCreateInfo,
		pApplicationInfo: unsafe.Pointer(&app),
	}
	var instance uintptr
	res, _, _ := procCreateInstance.Call(
		uintptr(unsafe.Pointer(&instInfo)),
		0,
		uintptr(unsafe.Pointer(&instance)),
	)
	if int32(res) != vkSuccess {
		return nil, fmt.Errorf("vkimport: vkCreateInstance failed: %d", int32(res))
	}

	d := &Device{instance: instance}
	if err := d.initDevice(); err != nil {
		procDestroyInstance.Call(instance, 0)
		return nil, err
	}
	return d, nil
}

func (d *Device) initDevice() error {
	var count uint32
	procEnumeratePhysicalDevices.Call(d.instance, uintptr(unsafe.Pointer(&count)), 0)
	if count == 0 {
		return ErrNoDevice
	}
	physicals := make([]uintptr, count)
	procEnumeratePhysicalDevices.Call(d.instance, uintptr(unsafe.Pointer(&count)), uintptr(unsafe.Pointer(&physicals[0])))

	var physical uintptr
	var family uint32
	found := false
	for _, p := range physicals {
		var n uint32
		procGetQueueFamilyProperties.Call(p, uintptr(unsafe.Pointer(&n)), 0)
		if n == 0 {
			continue
		}
		families := make([]queueFamilyProperties, n)
		procGetQueueFamilyProperties.Call(p, uintptr(unsafe.Pointer(&n)), uintptr(unsafe.Pointer(&families[0])))
		for i, f := range families {
			if f.queueFlags&(queueGraphicsBit|queueTransferBit) != 0 {
				physical, family, found = p, uint32(i), true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return ErrNoDevice
	}

	priority := float32(1.0)
	queueInfo := deviceQueueCreateInfo{
		sType:            sTypeDeviceQueueCreateInfo,
		queueFamilyIndex: family,
		queueCount:       1,
		pQueuePriorities: unsafe.Pointer(&priority),
	}
	extNames := []unsafe.Pointer{unsafe.Pointer(&extExternalMemoryWin32[0])}
	devInfo := deviceCreateInfo{
		sType:                   sTypeDeviceCreateInfo,
		queueCreateInfoCount:    1,
		pQueueCreateInfos:       unsafe.Pointer(&queueInfo),
		enabledExtensionCount:   uint32(len(extNames)),
		ppEnabledExtensionNames: unsafe.Pointer(&extNames[0]),
	}
	var device uintptr
	res, _, _ := procCreateDevice.Call(
		physical,
		uintptr(unsafe.Pointer(&devInfo)),
		0,
		uintptr(unsafe.Pointer(&device)),
	)
	if int32(res) != vkSuccess {
		return fmt.Errorf("vkimport: vkCreateDevice failed: %d (external memory import unavailable)", int32(res))
	}

	var queue uintptr
	procGetDeviceQueue.Call(device, uintptr(family), 0, uintptr(unsafe.Pointer(&queue)))
	procGetMemoryProperties.Call(physical, uintptr(unsafe.Pointer(&d.memProps)))

	poolInfo := commandPoolCreateInfo{
		sType:            sTypeCommandPoolCreateInfo,
		flags:            0x2, // RESET_COMMAND_BUFFER
		queueFamilyIndex: family,
	}
	var pool uint64
	res, _, _ = procCreateCommandPool.Call(device, uintptr(unsafe.Pointer(&poolInfo)), 0, uintptr(unsafe.Pointer(&pool)))
	if int32(res) != vkSuccess {
		procDestroyDevice.Call(device, 0)
		return fmt.Errorf("vkimport: vkCreateCommandPool failed: %d", int32(res))
	}
	allocInfo := commandBufferAllocateInfo{
		sType:              sTypeCommandBufferAllocateInfo,
		commandPool:        pool,
		level:              commandBufferLevelPrimary,
		commandBufferCount: 1,
	}
	var cmdBuf uintptr
	res, _, _ = procAllocateCommandBuffers.Call(device, uintptr(unsafe.Pointer(&allocInfo)), uintptr(unsafe.Pointer(&cmdBuf)))
	if int32(res) != vkSuccess {
		procDestroyCommandPool.Call(device, uintptr(pool), 0)
		procDestroyDevice.Call(device, 0)
		return fmt.Errorf("vkimport: vkAllocateCommandBuffers failed: %d", int32(res))
	}
	fenceInfo := fenceCreateInfo{sType: sTypeFenceCreateInfo}
	var fence uint64
	res, _, _ = procCreateFence.Call(device, uintptr(unsafe.Pointer(&fenceInfo)), 0, uintptr(unsafe.Pointer(&fence)))
	if int32(res) != vkSuccess {
		procDestroyCommandPool.Call(device, uintptr(pool), 0)
		procDestroyDevice.Call(device, 0)
		return fmt.Errorf("vkimport: vkCreateFence failed: %d", int32(res))
	}

	d.physical = physical
	d.device = device
	d.queue = queue
	d.family = family
	d.cmdPool = pool
	d.cmdBuf = cmdBuf
	d.fence = fence
	return nil
}

func (d *Device) findMemoryType(typeBits uint32, required uint32) (uint32, error) {
	for i := uint32(0); i < d.memProps.memoryTypeCount && i < maxMemoryTypes; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		if d.memProps.memoryTypes[i].propertyFlags&required == required {
			return i, nil
		}
	}
	return 0, fmt.Errorf("vkimport: no memory type for bits 0x%X props 0x%X", typeBits, required)
}

// Close destroys the device and instance. Images imported from this
// device must be destroyed first.
func (d *Device) Close() error {
	if d.device != 0 {
		procDestroyFence.Call(d.device, uintptr(d.fence), 0)
		procDestroyCommandPool.Call(d.device, uintptr(d.cmdPool), 0)
		procDestroyDevice.Call(d.device, 0)
		d.device = 0
	}
	if d.instance != 0 {
		procDestroyInstance.Call(d.instance, 0)
		d.instance = 0
	}
	return nil
}

// Image is a Vulkan image bound to imported external memory, plus a
// host-visible staging buffer for readback.
type Image struct {
	dev    *Device
	image  uint64 // VkImage
	memory uint64 // VkDeviceMemory

	staging    uint64 // VkBuffer
	stagingMem uint64 // VkDeviceMemory
	mapped     uintptr

	width  uint32
	height uint32
	layers uint32
	mips   uint32
	texel  uint32 // bytes per texel
}

// externalImageInfo builds the create info for an imported image. The
// extent, layer count, and mip count must match the producer's texture
// or the memory requirements diverge from the shared allocation. A
// single queue touches the image, so sharing is exclusive.
func externalImageInfo(desc *ImageDesc, ext unsafe.Pointer) imageCreateInfo {
	return imageCreateInfo{
		sType:        sTypeImageCreateInfo,
		pNext:        ext,
		imageType:    imageType2D,
		format:       desc.Format,
		extentWidth:  desc.Width,
		extentHeight: desc.Height,
		extentDepth:  1,
		mipLevels:    max(desc.MipLevels, 1),
		arrayLayers:  max(desc.ArrayLayers, 1),
		samples:      sampleCount1,
		tiling:       tilingOptimal,
		usage:        imageUsageTransferSrc | imageUsageSampled,
		sharingMode:  sharingExclusive,
	}
}

// ImportImage creates an image backed by the shared handle's memory.
// The handle is not consumed; legacy (KMT) handles are never owned by
// the importer.
func (d *Device) ImportImage(desc *ImageDesc) (*Image, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("vkimport: zero extent %dx%d", desc.Width, desc.Height)
	}
	if desc.BytesPerTexel == 0 {
		return nil, fmt.Errorf("vkimport: %d is not a readable texel size", desc.BytesPerTexel)
	}
	extInfo := externalMemoryImageCreateInfo{
		sType:       sTypeExternalMemoryImageCreate,
		handleTypes: uint32(desc.HandleType),
	}
	imgInfo := externalImageInfo(desc, unsafe.Pointer(&extInfo))
	var image uint64
	res, _, _ := procCreateImage.Call(d.device, uintptr(unsafe.Pointer(&imgInfo)), 0, uintptr(unsafe.Pointer(&image)))
	if int32(res) != vkSuccess {
		return nil, fmt.Errorf("vkimport: vkCreateImage failed: %d", int32(res))
	}

	var reqs memoryRequirements
	procGetImageMemoryRequirements.Call(d.device, uintptr(image), uintptr(unsafe.Pointer(&reqs)))

	importInfo := importMemoryWin32HandleInfoKHR{
		sType:      sTypeImportMemoryWin32HandleKHR,
		handleType: uint32(desc.HandleType),
		handle:     desc.Handle,
	}
	allocInfo := memoryAllocateInfo{
		sType:          sTypeMemoryAllocateInfo,
		pNext:          unsafe.Pointer(&importInfo),
		allocationSize: reqs.size,
		// Imported memory adopts the allocation's origin; index 0 is
		// accepted by drivers for dedicated D3D interop imports.
		memoryTypeIndex: 0,
	}
	var memory uint64
	res, _, _ = procAllocateMemory.Call(d.device, uintptr(unsafe.Pointer(&allocInfo)), 0, uintptr(unsafe.Pointer(&memory)))
	if int32(res) != vkSuccess {
		procDestroyImage.Call(d.device, uintptr(image), 0)
		return nil, fmt.Errorf("vkimport: vkAllocateMemory (import) failed: %d", int32(res))
	}
	res, _, _ = procBindImageMemory.Call(d.device, uintptr(image), uintptr(memory), 0)
	if int32(res) != vkSuccess {
		procFreeMemory.Call(d.device, uintptr(memory), 0)
		procDestroyImage.Call(d.device, uintptr(image), 0)
		return nil, fmt.Errorf("vkimport: vkBindImageMemory failed: %d", int32(res))
	}

	im := &Image{
		dev:    d,
		image:  image,
		memory: memory,
		width:  desc.Width,
		height: desc.Height,
		layers: imgInfo.arrayLayers,
		mips:   imgInfo.mipLevels,
		texel:  desc.BytesPerTexel,
	}
	if err := im.initStaging(); err != nil {
		im.Destroy()
		return nil, err
	}
	return im, nil
}

func (im *Image) initStaging() error {
	d := im.dev
	size := im.byteSize()
	bufInfo := bufferCreateInfo{
		sType: sTypeBufferCreateInfo,
		size:  size,
		usage: bufferUsageTransferDst,
	}
	var buf uint64
	res, _, _ := procCreateBuffer.Call(d.device, uintptr(unsafe.Pointer(&bufInfo)), 0, uintptr(unsafe.Pointer(&buf)))
	if int32(res) != vkSuccess {
		return fmt.Errorf("vkimport: vkCreateBuffer failed: %d", int32(res))
	}
	var reqs memoryRequirements
	procGetBufferMemoryRequirements.Call(d.device, uintptr(buf), uintptr(unsafe.Pointer(&reqs)))
	typeIdx, err := d.findMemoryType(reqs.memoryTypeBits, memoryPropertyHostVisible|memoryPropertyHostCoherent)
	if err != nil {
		procDestroyBuffer.Call(d.device, uintptr(buf), 0)
		return err
	}
	allocInfo := memoryAllocateInfo{
		sType:           sTypeMemoryAllocateInfo,
		allocationSize:  reqs.size,
		memoryTypeIndex: typeIdx,
	}
	var mem uint64
	res, _, _ = procAllocateMemory.Call(d.device, uintptr(unsafe.Pointer(&allocInfo)), 0, uintptr(unsafe.Pointer(&mem)))
	if int32(res) != vkSuccess {
		procDestroyBuffer.Call(d.device, uintptr(buf), 0)
		return fmt.Errorf("vkimport: vkAllocateMemory (staging) failed: %d", int32(res))
	}
	res, _, _ = procBindBufferMemory.Call(d.device, uintptr(buf), uintptr(mem), 0)
	if int32(res) != vkSuccess {
		procFreeMemory.Call(d.device, uintptr(mem), 0)
		procDestroyBuffer.Call(d.device, uintptr(buf), 0)
		return fmt.Errorf("vkimport: vkBindBufferMemory failed: %d", int32(res))
	}
	var mapped uintptr
	res, _, _ = procMapMemory.Call(d.device, uintptr(mem), 0, uintptr(reqs.size), 0, uintptr(unsafe.Pointer(&mapped)))
	if int32(res) != vkSuccess {
		procFreeMemory.Call(d.device, uintptr(mem), 0)
		procDestroyBuffer.Call(d.device, uintptr(buf), 0)
		return fmt.Errorf("vkimport: vkMapMemory failed: %d", int32(res))
	}
	im.staging = buf
	im.stagingMem = mem
	im.mapped = mapped
	return nil
}

// Size reports the imported image's dimensions.
func (im *Image) Size() (width, height uint32) { return im.width, im.height }

// byteSize is the tightly packed size of mip level 0 across all layers.
func (im *Image) byteSize() uint64 {
	return uint64(im.width) * uint64(im.height) * uint64(im.layers) * uint64(im.texel)
}

// ReadPixels copies the base mip of every layer into dst, tightly
// packed, layer after layer. It blocks until the GPU copy completes or
// the fence wait times out.
func (im *Image) ReadPixels(dst []byte) error {
	d := im.dev
	size := int(im.byteSize())
	if len(dst) < size {
		return fmt.Errorf("vkimport: buffer too small: %d < %d", len(dst), size)
	}

	begin := commandBufferBeginInfo{
		sType: sTypeCommandBufferBeginInfo,
		flags: commandBufferUsageOneTimeSubmit,
	}
	res, _, _ := procBeginCommandBuffer.Call(d.cmdBuf, uintptr(unsafe.Pointer(&begin)))
	if int32(res) != vkSuccess {
		return fmt.Errorf("vkimport: vkBeginCommandBuffer failed: %d", int32(res))
	}

	barrier := imageMemoryBarrier{
		sType:               sTypeImageMemoryBarrier,
		srcAccessMask:       0,
		dstAccessMask:       accessTransferRead,
		oldLayout:           imageLayoutUndefined,
		newLayout:           imageLayoutTransferSrcOptimal,
		srcQueueFamilyIndex: ^uint32(0), // VK_QUEUE_FAMILY_IGNORED
		dstQueueFamilyIndex: ^uint32(0),
		image:               im.image,
		subresourceRange: imageSubresourceRange{
			aspectMask: aspectColor,
			levelCount: im.mips,
			layerCount: im.layers,
		},
	}
	procCmdPipelineBarrier.Call(d.cmdBuf,
		stageTopOfPipe, stageTransfer, 0,
		0, 0, 0, 0,
		1, uintptr(unsafe.Pointer(&barrier)),
	)
	region := bufferImageCopy{
		imageSubresource: imageSubresourceLayers{
			aspectMask: aspectColor,
			layerCount: im.layers,
		},
		imageExtentWidth:  im.width,
		imageExtentHeight: im.height,
		imageExtentDepth:  1,
	}
	procCmdCopyImageToBuffer.Call(d.cmdBuf,
		uintptr(im.image), imageLayoutTransferSrcOptimal,
		uintptr(im.staging),
		1, uintptr(unsafe.Pointer(&region)),
	)
	res, _, _ = procEndCommandBuffer.Call(d.cmdBuf)
	if int32(res) != vkSuccess {
		return fmt.Errorf("vkimport: vkEndCommandBuffer failed: %d", int32(res))
	}

	submit := submitInfo{
		sType:              sTypeSubmitInfo,
		commandBufferCount: 1,
		pCommandBuffers:    unsafe.Pointer(&d.cmdBuf),
	}
	res, _, _ = procQueueSubmit.Call(d.queue, 1, uintptr(unsafe.Pointer(&submit)), uintptr(d.fence))
	if int32(res) != vkSuccess {
		return fmt.Errorf("vkimport: vkQueueSubmit failed: %d", int32(res))
	}
	res, _, _ = procWaitForFences.Call(d.device, 1, uintptr(unsafe.Pointer(&d.fence)), 1,
		uintptr(readbackTimeout.Nanoseconds()))
	procResetFences.Call(d.device, 1, uintptr(unsafe.Pointer(&d.fence)))
	if err := fenceWaitError(int32(res)); err != nil {
		return err
	}

	src := unsafe.Slice((*byte)(unsafe.Pointer(im.mapped)), size)
	copy(dst[:size], src)
	return nil
}

// fenceWaitError maps a vkWaitForFences result. The per-tick readback
// must never park the capture loop, so a timeout is an error the caller
// can demote on, not a reason to keep waiting.
func fenceWaitError(res int32) error {
	switch res {
	case vkSuccess:
		return nil
	case vkTimeout:
		return fmt.Errorf("vkimport: readback fence not signaled within %v", readbackTimeout)
	default:
		return fmt.Errorf("vkimport: vkWaitForFences failed: %d", res)
	}
}

// Destroy releases the image, its imported memory, and the staging
// buffer.
func (im *Image) Destroy() {
	d := im.dev
	if im.mapped != 0 {
		procUnmapMemory.Call(d.device, uintptr(im.stagingMem))
		im.mapped = 0
	}
	if im.staging != 0 {
		procDestroyBuffer.Call(d.device, uintptr(im.staging), 0)
		procFreeMemory.Call(d.device, uintptr(im.stagingMem), 0)
		im.staging = 0
		im.stagingMem = 0
	}
	if im.image != 0 {
		procDestroyImage.Call(d.device, uintptr(im.image), 0)
		im.image = 0
	}
	if im.memory != 0 {
		procFreeMemory.Call(d.device, uintptr(im.memory), 0)
		im.memory = 0
	}
}
